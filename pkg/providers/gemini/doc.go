// Package gemini provides a Google Gemini backend for the language model factory.
//
// The backend uses the google.golang.org/genai SDK and talks either to the
// Gemini API (api_key) or to Vertex AI (vertexai: true, project, location).
// JSON output formats switch the response MIME type to application/json.
package gemini
