package dto

// Paginação baseada em página para os listados.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest paginação por página (1-based).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Normalize aplica valores padrão e o teto de tamanho de página do servidor.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset devolve o deslocamento correspondente à página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ErrorResponse corpo de erro HTTP: {detail, code}.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}
