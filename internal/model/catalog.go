package model

// Catalog entities referenced by contracts. They are selected by a
// contract but owned by the backend.

type Service struct {
	ID          int64
	Description string
}

type Company struct {
	ID    int64
	Name  string
	Owner string
	Email string
}

type ContractType struct {
	ID   int64
	Name string
}
