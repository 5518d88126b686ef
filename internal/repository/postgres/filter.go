package postgres

import (
	"fmt"
	"strings"

	"gamesapi/internal/repository"
)

// whereClause renders filter into a SQL condition over the JSONB data column.
// Placeholders are numbered starting at $next and the returned args line up
// with them. A nil filter renders to the empty condition.
func whereClause(filter repository.Filter, next int) (string, []any, error) {
	if filter == nil {
		return "", nil, nil
	}
	b := &clauseBuilder{next: next}
	cond, err := b.render(filter)
	if err != nil {
		return "", nil, err
	}
	return cond, b.args, nil
}

type clauseBuilder struct {
	next int
	args []any
}

func (b *clauseBuilder) placeholder(v any) string {
	b.args = append(b.args, v)
	p := fmt.Sprintf("$%d", b.next)
	b.next++
	return p
}

func (b *clauseBuilder) render(filter repository.Filter) (string, error) {
	switch p := filter.(type) {
	case repository.Equals:
		// JSONB scalars compare through their text form.
		return fmt.Sprintf("data->>%s::text = %s", b.placeholder(p.Field), b.placeholder(fmt.Sprint(p.Value))), nil
	case repository.ContainsFold:
		pattern := "%" + escapeLike(p.Term) + "%"
		return fmt.Sprintf("data->>%s::text ILIKE %s", b.placeholder(p.Field), b.placeholder(pattern)), nil
	case repository.Or:
		if len(p) == 0 {
			return "", fmt.Errorf("or filter requires at least one predicate")
		}
		parts := make([]string, 0, len(p))
		for _, sub := range p {
			cond, err := b.render(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, cond)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	default:
		return "", fmt.Errorf("unsupported filter type %T", filter)
	}
}

// escapeLike quotes LIKE wildcards so the term matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
