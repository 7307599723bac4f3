package interfaces

// ApplicationContext carries a parsed request body and request-scoped
// metadata from the transport layer into controllers without binding
// them to gin directly.
type ApplicationContext[T any] struct {
	Ctx       interface{}
	Body      *T
	Keys      map[string]any
	Params    map[string]string
	UserAgent string
	DeviceID  string
	SourceIP  string
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	if value, ok := ac.GetContextData(key).(string); ok {
		return value
	}
	return ""
}

func (ac *ApplicationContext[T]) GetBoolContextData(key string) bool {
	if value, ok := ac.GetContextData(key).(bool); ok {
		return value
	}
	return false
}

func (ac *ApplicationContext[T]) GetStringParameter(key string) string {
	if ac.Params == nil {
		return ""
	}
	return ac.Params[key]
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}
