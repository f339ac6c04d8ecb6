// Package api is the typed client for the portfolio REST API.
//
// Every operation goes through two layers:
//
//   - the transport ([Client] request helper) applies a per-call deadline,
//     encodes the JSON body and converts failures into a [*RequestError];
//   - the retry policy ([httputil.Retry]) repeats calls that failed with a
//     5xx status, with a fixed delay between attempts.
//
// # Errors
//
// Failures are always [*RequestError]. [RequestError.Kind] distinguishes
// timeouts (Status 408, produced locally when the deadline elapses), network
// failures (Status 0, no response received) and HTTP errors (the server's
// status). Only [Client.HealthCheck] swallows errors.
//
// # Usage
//
//	client := api.New(api.DefaultConfig(), api.WithLogger(logger))
//	snap, err := client.FetchPortfolio(ctx)
//	if err != nil {
//	    var reqErr *api.RequestError
//	    if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
//	        // nothing migrated yet
//	    }
//	}
package api
