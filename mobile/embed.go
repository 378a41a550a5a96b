//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前需将 data/*.yaml 复制到 mobile/data/。
package mobile

import "embed"

//go:embed data/*.yaml
var dataFS embed.FS
