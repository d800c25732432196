// Package http implements the HTTP handlers of the production dashboard.
// Handlers stay thin: they parse and validate the request, call the
// production or health service, and format the response.
//
// # Routes
//
//	GET /                      dashboard, ?menu=Home|Data|Plots
//	GET /home, /data, /plots   dashboard shortcuts
//	GET /charts/{id}.{png|svg} chart images
//	GET /static/banner         banner image
//	GET /api/data/...          records, columns, totals, series, exports
//	GET /api/charts            chart catalogue
//	GET /api/health[/ready|/live], /api/version
//
// # Error Handling
//
// JSON and image endpoints answer failures with RFC 7807 problem details
// produced by errors.ErrorHandler. Dashboard views render the same
// classification as an error panel inside the page so the sidebar stays
// usable.
package http
