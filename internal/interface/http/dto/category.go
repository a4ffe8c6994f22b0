package dto

// CategoryRequest HTTP分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=100" example:"计算机"`
	Description string `json:"description" binding:"max=255" example:"编程、算法与系统"`
}
