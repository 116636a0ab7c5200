package platform

// Package platform contains OS integration glue: filesystem helpers over
// afero and the per-user configuration location.
