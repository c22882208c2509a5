/*
Package docstore defines how roadtrip reads and writes schema-less documents.

A Store holds named collections of roadtrip.Document values.
Every operation selects documents with a roadtrip.Filter;
a filter's keys are (possibly dotted) field paths and its values are what those fields must equal.

Three implementations exist:

  - docstore/memory keeps collections in process memory and backs tests and local development
  - docstore/mongo talks to a MongoDB deployment
  - postgres stores documents as JSONB rows

docstoretest exercises the behavior every implementation must share.
*/
package docstore
