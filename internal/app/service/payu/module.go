package payu

import "go.uber.org/fx"

// Module exposes the PayU client via Fx.
var Module = fx.Options(
	fx.Provide(NewClient),
)
