// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供坐标转换工具。
//
// # 坐标系统概述
//
// 本项目使用以下坐标系统：
//   - **世界坐标**：原点位于屏幕中心，X 轴向右，Y 轴向上（对话框布局、网格顶点均使用此坐标）
//   - **屏幕坐标**：相对于游戏窗口左上角，Y 轴向下（Ebiten 默认行为）
//
// # 核心转换公式
//
//	screenX = screenWidth/2 + worldX
//	screenY = screenHeight/2 - worldY
package utils

// WorldToScreen 将世界坐标转换为屏幕坐标
func WorldToScreen(worldX, worldY float64, screenWidth, screenHeight int) (screenX, screenY float64) {
	return float64(screenWidth)/2 + worldX, float64(screenHeight)/2 - worldY
}
