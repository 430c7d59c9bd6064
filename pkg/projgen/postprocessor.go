package projgen

// PostProcessor lets external code observe and rewrite generated text.
// Implementations are registered explicitly before a sync is invoked.
type PostProcessor interface {
	// PreGenerate runs before a full sync. Returning true tells the
	// generator that the processor produced the files itself and the
	// default generation must be skipped for this pass.
	PreGenerate() bool

	// OnProjectTextGenerated may rewrite the text of a project file.
	OnProjectTextGenerated(path, text string) string

	// OnSolutionTextGenerated may rewrite the text of the solution file.
	OnSolutionTextGenerated(path, text string) string

	// PostGenerate is a notification sent after a full sync.
	PostGenerate()
}

// NopPostProcessor implements PostProcessor without changing anything.
// Embed it to implement only the hooks you need.
type NopPostProcessor struct{}

func (NopPostProcessor) PreGenerate() bool { return false }

func (NopPostProcessor) OnProjectTextGenerated(_, text string) string { return text }

func (NopPostProcessor) OnSolutionTextGenerated(_, text string) string { return text }

func (NopPostProcessor) PostGenerate() {}
