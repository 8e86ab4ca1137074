// Package definition loads state graphs from YAML documents.
//
// A document lists states with optional entry, do and exit hooks and the
// transitions between them. Hooks and guards are named entries of a
// registry.Registry, configured with free-form arguments:
//
//	name: counter
//	states:
//	  - id: count
//	    do: {action: incr, args: {key: n}}
//	  - id: done
//	transitions:
//	  - to: count                       # no "from": the entry transition
//	  - from: count
//	    to: count
//	    when: {condition: less_than, args: {key: n, value: 3}}
//	  - from: count
//	    to: done
package definition
