// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentLoader: Extracts page text from a source file
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Language model operations (query expansion, generation)
//   - VectorStore: Chunk + embedding persistence and similarity search
//   - StoreProvider: Collection lifecycle (open, staged build, commit)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: Customisable prompt templates. When nil, services use
//     compiled-in defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
