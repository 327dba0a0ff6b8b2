// Package gemini provides an implementation of the generation.Generator
// interface that uses Google's Gemini API for producing stylized images
// from text prompts.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's domain logic to Google's external Gemini
// service. It translates between the application's domain models and the
// Gemini API without exposing the details of the external service to the
// core application.
//
// Key components:
//
// 1. ImageGenerator:
//   - Implements the generation.Generator interface
//   - Handles communication with the Gemini API
//   - Extracts inline image payloads from responses
//
// 2. Instruction Building:
//   - Wraps the user prompt in a fixed style-constrained instruction
//   - Requests a single image-and-text response
//
// 3. Safety:
//   - Applies fixed content-safety thresholds (block medium and above for
//     dangerous content, harassment, hate speech, and sexual content)
//   - Surfaces safety blocks as generation.ErrContentBlocked
//
// 4. Post-processing:
//   - Runs background removal on the returned image bytes
//   - Falls back to the unprocessed image when removal fails
//   - Assembles the base64 data URL shared by both renditions
package gemini
