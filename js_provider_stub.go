//go:build !js_eval

package formsync

// NewJSProvider is unavailable without the js_eval build tag.
func NewJSProvider(rules map[string]string, opts ...JSProviderOption) DefaultProvider {
	_ = rules
	_ = applyJSProviderOptions(opts)
	return nil
}

func jsProviderAvailable() bool {
	return false
}
