package activity

import "context"

type ActivityRepository interface {
	Append(ctx context.Context, entry Entry) error
}
