package model

// Builder assembles registration schemas from question lists.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	opts.OptionalCredentials = options.OptionalCredentials
	opts.ConfirmPassword = options.ConfirmPassword
	return &Builder{opts: opts}
}

// Build prepends the credential pair to one required plain text field per
// question. Question order is preserved and the question text is used
// verbatim as both field name and label. Duplicate or empty names are
// rejected.
func (b *Builder) Build(questions []string) (Schema, error) {
	fields := make([]Field, 0, len(questions)+2)
	fields = append(fields, b.credentialFields()...)

	for _, question := range questions {
		fields = append(fields, Field{
			Name:     question,
			Kind:     KindPlainText,
			Required: true,
			Label:    question,
		})
	}

	var reserved []string
	if b.opts.ConfirmPassword {
		reserved = append(reserved, FieldPassword+ConfirmSuffix)
	}
	if err := validateFields(fields, reserved); err != nil {
		return Schema{}, err
	}

	return Schema{Fields: fields}, nil
}

func (b *Builder) credentialFields() []Field {
	required := !b.opts.OptionalCredentials
	return []Field{
		{
			Name:       FieldUsername,
			Kind:       KindPlainText,
			Required:   required,
			Label:      b.opts.Labeler(FieldUsername),
			Credential: true,
		},
		{
			Name:       FieldPassword,
			Kind:       KindSecret,
			Required:   required,
			Label:      b.opts.Labeler(FieldPassword),
			Credential: true,
			Confirm:    b.opts.ConfirmPassword,
		},
	}
}
