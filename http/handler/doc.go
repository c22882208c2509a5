/*
Package handler serves roadtrip's HTTP surface.

Trip and stop handlers parse the URL and body, build a roadtrip.Filter or roadtrip.Document,
call the docstore.Store and respond with the result as JSON.
Store failures respond with 500 and {"error": "..."}.
Detail lookups matching nothing respond with null.

Routes lists every route; the router gates those requiring authentication
and mirrors the ones flagged for it under /app/test.
*/
package handler
