// Package environment names the deployment environments the site runs in and
// carries the current one through context.Context.
//
// The environment decides logger format and whether dispatch may log the
// full would-be email payload when the relay is not configured (development
// only).
//
//	env := environment.Parse(cfg.Env)
//	r.Use(environment.Middleware(env))
//
//	if environment.IsDevelopment(ctx) { ... }
package environment
