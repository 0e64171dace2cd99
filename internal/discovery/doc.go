// Package discovery runs once per connection, before any probe, and
// collects the driver's advertised capabilities into an immutable
// Snapshot: driver/DBMS identity, the full type catalog, function support,
// and scalar-function bitmasks. Grounded on original_source's
// src/discovery/{driver_info,type_info,function_info}.cpp.
package discovery
