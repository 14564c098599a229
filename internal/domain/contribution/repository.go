package contribution

import "context"

type TableRepository interface {
	// List returns every stored table set ordered by EffectiveDate.
	List(ctx context.Context) ([]TableSet, error)
	Save(ctx context.Context, tables TableSet) error
}
