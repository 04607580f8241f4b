// Package openai provides an implementation of the translation.Translator
// interface that uses the OpenAI chat completion API as the premium
// translation backend. Being a paid service, it reports a longer throttle
// delay than the free-tier backend.
package openai
