package schema

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// FieldNames is the slice of the field-definition store the registry needs:
// just the names a tenant has defined. Satisfied by customfield.Repository.
type FieldNames interface {
	FieldNamesByUser(ctx context.Context, userID string) ([]string, error)
}

//go:generate mockgen -source=registry.go -destination=mock/registry_mock.go -package=mock
type Registry interface {
	Validate(ctx context.Context, userID string, proposed map[string]any) error
}

type registry struct {
	fields FieldNames
	logger *zap.Logger
}

func NewRegistry(fields FieldNames, logger ...*zap.Logger) Registry {
	l := zap.L().Named("schema.registry")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schema.registry")
	}
	return &registry{fields: fields, logger: l}
}

// Validate checks that every proposed key matches a field definition owned by
// the same user. A nil/empty bag is trivially valid. Read-only.
func (r *registry) Validate(ctx context.Context, userID string, proposed map[string]any) error {
	if len(proposed) == 0 {
		return nil
	}

	names, err := r.fields.FieldNamesByUser(ctx, userID)
	if err != nil {
		r.logger.Error("load field names failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	defined := make(map[string]struct{}, len(names))
	for _, n := range names {
		defined[n] = struct{}{}
	}

	invalid := make([]string, 0)
	for key := range proposed {
		if _, ok := defined[key]; !ok {
			invalid = append(invalid, key)
		}
	}

	if len(invalid) == 0 {
		return nil
	}

	// JSON objects carry no order in Go, so the offending keys are reported sorted.
	sort.Strings(invalid)

	r.logger.Warn("custom field validation failed",
		zap.String("user_id", userID),
		zap.Strings("invalid_fields", invalid),
	)
	return NewInvalidFieldsError(invalid)
}
