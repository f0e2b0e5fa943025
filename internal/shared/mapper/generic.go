// Package mapper provides a small generic helper for converting between
// domain types and their transport DTOs.
package mapper

type Mapper[T any, D any] struct {
	toDTO    func(T) D
	toDomain func(D) T
}

func New[T any, D any](toDTO func(T) D, toDomain func(D) T) *Mapper[T, D] {
	return &Mapper[T, D]{
		toDTO:    toDTO,
		toDomain: toDomain,
	}
}

func (m *Mapper[T, D]) ToDTO(entity T) D {
	return m.toDTO(entity)
}

func (m *Mapper[T, D]) ToDomain(dto D) T {
	return m.toDomain(dto)
}

func (m *Mapper[T, D]) ToDTOList(entities []T) []D {
	if entities == nil {
		return nil
	}

	dtos := make([]D, 0, len(entities))
	for _, entity := range entities {
		dtos = append(dtos, m.toDTO(entity))
	}
	return dtos
}

func (m *Mapper[T, D]) ToDomainList(dtos []D) []T {
	if dtos == nil {
		return nil
	}

	entities := make([]T, 0, len(dtos))
	for _, dto := range dtos {
		entities = append(entities, m.toDomain(dto))
	}
	return entities
}

// MapSlice applies a mapper function to each element of a slice.
// Returns nil if the input slice is nil.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	if items == nil {
		return nil
	}

	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}
