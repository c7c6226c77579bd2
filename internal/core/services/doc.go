// Package services contains the core application logic: collection
// lifecycle management, multi-query retrieval, and grounded answer
// generation. Services depend only on domain types and port interfaces;
// all I/O goes through driven ports.
package services
