// Package logging provides the projgen.Logger used by the command line.
//
// A Logger writes one line per message to an io.Writer. Scoped loggers
// created with With share the writer of their parent and prefix every
// line with the artifact they report on, so output from concurrent
// watch batches stays readable.
package logging
