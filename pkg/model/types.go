package model

import internalmodel "github.com/goliatone/go-regform/internal/model"

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	KindPlainText = internalmodel.KindPlainText
	KindSecret    = internalmodel.KindSecret
)

const (
	FieldUsername = internalmodel.FieldUsername
	FieldPassword = internalmodel.FieldPassword
	ConfirmSuffix = internalmodel.ConfirmSuffix
)

var (
	ErrDuplicateField = internalmodel.ErrDuplicateField
	ErrEmptyFieldName = internalmodel.ErrEmptyFieldName
)

type Field = internalmodel.Field
type Schema = internalmodel.Schema
