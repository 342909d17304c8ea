// Package types defines the Service and table interfaces, entity types,
// patches, and standard errors for the PropAI data layer.
//
// A Service is backend-agnostic: callers Attach it to the backend described by
// a Config, reach entities through the typed tables, and Detach when done.
package types
