/*
Package postgres manages our database connection and keeps documents as JSONB rows.

As part of the connection process, we also ensure that all migrations have been run on the proper database.
The situation where the database is simply a target for some testing has been considered as well.
In this scenario, we are dropping the public schema.

DocumentStore implements docstore.Store on top of a single documents table:
each row carries the collection it belongs to and the document itself.
Filters translate to SQL/JSON path predicates, so dotted paths reach into nested objects and arrays
the same way they do in MongoDB.
*/
package postgres
