package deploy

import (
	"context"
	"fmt"
)

// pipelineStep names a single fallible stage of the deployment sequence.
type pipelineStep struct {
	name    string
	execute func(executionContext context.Context, run *deploymentRun) error
}

// executePipeline runs the ordered steps, short-circuiting on the first failure.
func executePipeline(executionContext context.Context, steps []pipelineStep, onStepStarted func(stepName string), run *deploymentRun) error {
	for _, step := range steps {
		if onStepStarted != nil {
			onStepStarted(step.name)
		}
		if stepError := step.execute(executionContext, run); stepError != nil {
			return fmt.Errorf(stepFailureTemplateConstant, step.name, stepError)
		}
	}
	return nil
}
