package rules

import "errors"

// ErrTemplateMissing marks an aggregate target whose scaffold template could
// not be resolved. The target is abandoned; other targets still proceed.
var ErrTemplateMissing = errors.New("rules: scaffold template not found")
