// Package classifier provides [fieldschema.Classifier] implementations that
// identify the language of a text with a hosted language model.
//
//	cl, err := classifier.NewOpenAI(os.Getenv("OPENAI_API_KEY"))
//	report := schema.Evaluate(ctx, rec, fieldschema.WithClassifier(cl))
//
// Both [OpenAI] and [Google] ask the model for a bare ISO 639-1 code and
// reject answers that do not parse as a language tag, so a chatty reply
// surfaces as an error (and the rule as unavailable) rather than a wrong
// verdict. [Func] adapts any function, which is handy in tests.
package classifier
