package toolform

// Package toolform provides:
//
// - One canonical, order-preserving, reference-free schema representation
//   (SchemaNode) shared by four descriptor adapters (struct, callable
//   descriptor, data sample, schema document) under adapt/
// - Total $ref/$defs inlining with deterministic cycle detection (Inline)
// - A minimal canonical serializer for LLM prompt consumption (Serialize,
//   Canonical, CanonicalJSON)
// - Model synthesis against a pluggable validation engine (Synthesize),
//   guaranteeing the synthesized model reproduces the canonical schema
//   byte-for-byte
// - A stable error model via Issues (ordered location path, code, message)
//   and translation into a fixed-shape feedback envelope (Translate)
//
// Design policy:
// - Keep only public APIs in the root package; put the default validation
//   engine under internal/.
// - Place descriptor adapters under adapt/, callable wrapping under tool/,
//   and the document representation under jsonschema/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	node, err := adapt.JSONDocument(raw)
//	schema, err := toolform.CanonicalJSON(node)
//
//	model, err := toolform.Synthesize(node, toolform.DefaultEngine())
//	v, err := model.Validate(ctx, input)
//	if iss, ok := toolform.AsIssues(err); ok {
//		fb, _ := toolform.Translate(iss).JSON()
//		// hand fb back to the assistant
//	}
