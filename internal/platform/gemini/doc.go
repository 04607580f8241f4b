// Package gemini provides an implementation of the translation.Translator
// interface that uses Google's Gemini API as the free-tier translation
// backend.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the translation orchestrator to Google's external Gemini AI
// service. It translates between the application's capability interface and
// the Gemini API without exposing the details of the external service to the
// core application. The free tier is rate-limited, so the backend reports a
// short throttle delay for the orchestrator's sequential call loop.
package gemini
