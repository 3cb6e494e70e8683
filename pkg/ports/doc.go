/*
Package ports defines the driven ports (interfaces) for declaration storage.

These interfaces decouple the CLI and servers from the backend that keeps
declaration sets, so the same commands work against Redis or process memory.

# Key Interfaces

  - DeclarationStore: Persists named declaration sets.
  - DeclarationSource: Produces a single declaration set (e.g., from a directory of documents).
*/
package ports
