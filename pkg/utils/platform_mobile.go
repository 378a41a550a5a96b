//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）始终按触摸设备处理
func IsMobile() bool {
	return true
}
