// Package health provides liveness and readiness endpoints for long-running
// omg sessions such as "omg ages --watch".
//
// # Endpoints
//
//   - /healthz: Liveness, 200 while the process is running
//   - /readyz: Readiness, 503 while any registered check fails
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("bundle", func(ctx context.Context) error {
//	    _, err := os.Stat(root)
//	    return err
//	})
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker)
//
// Checks run concurrently, each bounded by the checker's timeout. A check that
// does not return in time is reported unhealthy with ErrCheckTimeout.
package health
