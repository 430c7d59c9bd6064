// Package retry re-attempts operations that fail for transient reasons.
//
// Generated project files are frequently held open by an IDE that is
// reloading them. A write that hits a sharing violation or a busy file
// usually succeeds a few hundred milliseconds later, so the synchronizer
// routes its writes through an Executor:
//
//	executor := retry.NewFileWriteExecutor()
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fs.WriteFile(path, content)
//	})
//
// The ErrorClassifier decides which errors are worth another attempt and
// the BackoffStrategy spaces the attempts out. Executor instances are safe
// for concurrent use; WithOnRetry returns a configured copy.
package retry
