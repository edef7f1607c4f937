// Package model defines the registration schema consumed by validators and
// renderers. A Schema is an ordered list of Fields: the credential pair
// (username, password) always comes first, followed by one required plain text
// field per question, named by the question text. Builders live in
// internal/model but return the types defined here. Field.Kind separates plain
// text from secrets; Field.Credential flags the pair that is stripped before
// answers are recorded; Field.Confirm asks renderers and the validator for a
// second matching input keyed "<name>.confirm".
package model
