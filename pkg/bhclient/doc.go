// Package bhclient provides the primary entry point for constructing a
// BookHub back-office API client that implements the bookhub.Client interface.
//
// It layers configuration, the retrying HTTP transport and credentials on top
// of the resource interfaces and types defined in the bookhub package. Most
// applications build a client here and hand it to the screen controllers in
// package screen.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/bookhub/admin-client/pkg/bhclient"
//	  "github.com/bookhub/admin-client/pkg/bookhub"
//	  "github.com/bookhub/admin-client/pkg/screen"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := bhclient.New(&bookhub.Config{
//	    APIEndpoint: "api.bookhub.example",
//	    AccessToken: "eyJhbGciOi...",
//	    RetryMax:    3,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  policies := screen.NewPolicyScreen(cli.Policies(), bhclient.Credentials(cli))
//	  if err := policies.Mount(ctx); err != nil { log.Fatal(err) }
//	}
//
// The endpoint is normalized: a trailing slash is dropped and "https://" is
// added when no scheme is given.
package bhclient
