package deploy

import (
	"bufio"
	"io"
)

// IOConfirmationPrompter blocks on an input stream until the operator responds.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// AwaitConfirmation writes the prompt and waits for any operator input.
//
// Any response, including an empty line, confirms; aborting remains the
// operator's job via process interruption.
func (prompter *IOConfirmationPrompter) AwaitConfirmation(prompt string) error {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return writeError
		}
	}

	_, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return readError
	}
	return nil
}
