package repository

import (
	"context"
	"fmt"
)

// ListBannedWords возвращает полный список запрещённых слов для модерации.
func (s *Storage) ListBannedWords(ctx context.Context) ([]string, error) {
	const op = "storage.ListBannedWords"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT word FROM banned_words ORDER BY word`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
