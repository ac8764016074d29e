package webhook

import "context"

type IService interface {
	Post(canxCtx context.Context, payload map[string]interface{}) error
}
