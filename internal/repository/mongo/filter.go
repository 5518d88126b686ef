package mongo

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gamesapi/internal/repository"
)

// toBSON translates a repository.Filter into the driver's query dialect.
// A nil filter becomes the match-all query.
func toBSON(f repository.Filter) (bson.M, error) {
	if f == nil {
		return bson.M{}, nil
	}
	switch p := f.(type) {
	case repository.Equals:
		return bson.M{p.Field: p.Value}, nil
	case repository.ContainsFold:
		// Quote the term so it matches as a literal substring, not a pattern.
		return bson.M{p.Field: primitive.Regex{Pattern: regexp.QuoteMeta(p.Term), Options: "i"}}, nil
	case repository.Or:
		if len(p) == 0 {
			return nil, fmt.Errorf("or filter requires at least one predicate")
		}
		clauses := make([]bson.M, 0, len(p))
		for _, sub := range p {
			c, err := toBSON(sub)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, c)
		}
		return bson.M{"$or": clauses}, nil
	default:
		return nil, fmt.Errorf("unsupported filter type %T", f)
	}
}
