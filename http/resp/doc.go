/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides three main ways of responding to an HTTP request:
  - rendering JSON data
  - rendering a JSON error
  - redirecting
*/
package resp
