// Package generation provides interfaces and error types for interacting
// with external generative-image services. It abstracts the details of the
// image model integration (Gemini), allowing the application to produce
// stylized images from prompts without coupling to specific external
// services.
package generation
