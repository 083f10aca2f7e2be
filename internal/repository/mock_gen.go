// internal/repository/mock_gen.go
package repository

//go:generate mockgen -typed -source=./source.go -destination=../mocks/mock_source_repository.go -package=mocks SourceRepository
