package model

// Pagination は一覧系レスポンス共通のページ情報
type Pagination struct {
	Current  int   `json:"current"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Pagination{
		Current:  page,
		PageSize: limit,
		Total:    total,
		Pages:    pages,
	}
}

// Offset は現在ページのオフセットを返します
func (p Pagination) Offset() int {
	return (p.Current - 1) * p.PageSize
}
