package model

// Libro is a catalog entry as listed by the backend.
type Libro struct {
	ID                    int64  `json:"id_libro"`
	Titulo                string `json:"titulo"`
	Autor                 string `json:"autor"`
	Categoria             string `json:"categoria,omitempty"`
	ISBN                  string `json:"isbn,omitempty"`
	EjemplaresDisponibles int    `json:"ejemplares_disponibles"`
}

// Disponible reports whether at least one copy can be lent.
func (l Libro) Disponible() bool { return l.EjemplaresDisponibles > 0 }

// LibrosListOptions filters the catalog. Q and Categoria are mutually exclusive;
// Categoria wins when both are set.
type LibrosListOptions struct {
	Q         string
	Categoria string
}

// CreateLibroRequest adds a book to the catalog.
type CreateLibroRequest struct {
	Titulo    string `json:"titulo"              validate:"required,max=255"`
	Autor     string `json:"autor"               validate:"required,max=255"`
	Categoria string `json:"categoria,omitempty" validate:"omitempty,max=120"`
	ISBN      string `json:"isbn,omitempty"      validate:"omitempty,max=20"`
}

// CreateEjemplarRequest adds a physical copy of an existing book.
type CreateEjemplarRequest struct {
	LibroID int64 `json:"id_libro" validate:"required,gt=0"`
}
