package support

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/TheApexWu/BloodMeridianNLP/internal/pipeline"
	"github.com/TheApexWu/BloodMeridianNLP/internal/testutil"
)

// pageSeparator splits a PDF doc string into pages.
const pageSeparator = "---"

func (testCtx *TestContext) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(testCtx.WorkingDir, name)
}

func (testCtx *TestContext) writeFile(name, content string) error {
	full := testCtx.path(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", full, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", full, err)
	}
	return nil
}

func (testCtx *TestContext) readFile(name string) (string, error) {
	data, err := os.ReadFile(testCtx.path(name))
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", name, err)
	}
	return string(data), nil
}

// theSampleWordListsAreAvailable writes both lexicons under their default names.
func (testCtx *TestContext) theSampleWordListsAreAvailable() error {
	if err := testCtx.writeFile(pipeline.DefaultSpanishPath, strings.Join(testutil.SpanishWords, "\n")+"\n"); err != nil {
		return err
	}
	return testCtx.writeFile(pipeline.DefaultEnglishPath, strings.Join(testutil.EnglishWords, "\n")+"\n")
}

// theSampleDocumentIsAvailable writes the sample novel excerpt under the default name.
func (testCtx *TestContext) theSampleDocumentIsAvailable() error {
	return testCtx.writeFile(pipeline.DefaultDocumentPath, testutil.SampleDocument)
}

func (testCtx *TestContext) aFileContaining(name string, content *godog.DocString) error {
	return testCtx.writeFile(name, content.Content+"\n")
}

func (testCtx *TestContext) anEmptyFile(name string) error {
	return testCtx.writeFile(name, "")
}

// aPDFWithPages writes a PDF whose pages are the doc string sections split on "---".
func (testCtx *TestContext) aPDFWithPages(name string, content *godog.DocString) error {
	var pages [][]string
	for _, section := range strings.Split(content.Content, "\n"+pageSeparator+"\n") {
		pages = append(pages, strings.Split(section, "\n"))
	}
	return testCtx.writeFile(name, string(testutil.BuildTextPDF(pages...)))
}

// theFileShouldExist verifies a file exists.
func (testCtx *TestContext) theFileShouldExist(filename string) error {
	if _, err := os.Stat(testCtx.path(filename)); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}
	return nil
}

func (testCtx *TestContext) theFileShouldNotExist(filename string) error {
	if _, err := os.Stat(testCtx.path(filename)); err == nil {
		return fmt.Errorf("file unexpectedly exists: %s", filename)
	}
	return nil
}

// theFileShouldContain verifies a file contains specific content.
func (testCtx *TestContext) theFileShouldContain(filename, expectedContent string) error {
	content, err := testCtx.readFile(filename)
	if err != nil {
		return err
	}
	if !strings.Contains(content, expectedContent) {
		return fmt.Errorf("file %s does not contain '%s'\nContent: %s", filename, expectedContent, content)
	}
	return nil
}

func (testCtx *TestContext) theFileShouldNotContain(filename, text string) error {
	content, err := testCtx.readFile(filename)
	if err != nil {
		return err
	}
	if strings.Contains(content, text) {
		return fmt.Errorf("file %s unexpectedly contains '%s'\nContent: %s", filename, text, content)
	}
	return nil
}

// theFileShouldBe compares the whole file content.
func (testCtx *TestContext) theFileShouldBe(filename string, expected *godog.DocString) error {
	content, err := testCtx.readFile(filename)
	if err != nil {
		return err
	}
	if content != expected.Content {
		return fmt.Errorf("file %s mismatch\nExpected:\n%q\nActual:\n%q", filename, expected.Content, content)
	}
	return nil
}

func (testCtx *TestContext) theFileShouldBeEmpty(filename string) error {
	content, err := testCtx.readFile(filename)
	if err != nil {
		return err
	}
	if content != "" {
		return fmt.Errorf("file %s is not empty: %q", filename, content)
	}
	return nil
}

func (testCtx *TestContext) iRememberTheContentOf(filename string) error {
	content, err := testCtx.readFile(filename)
	if err != nil {
		return err
	}
	testCtx.remembered[filename] = content
	return nil
}

func (testCtx *TestContext) theFileShouldBeUnchanged(filename string) error {
	before, ok := testCtx.remembered[filename]
	if !ok {
		return fmt.Errorf("content of %s was not remembered", filename)
	}
	after, err := testCtx.readFile(filename)
	if err != nil {
		return err
	}
	if before != after {
		return fmt.Errorf("file %s changed\nBefore:\n%q\nAfter:\n%q", filename, before, after)
	}
	return nil
}

// RegisterFileSteps registers fixture and file assertion steps.
func (testCtx *TestContext) RegisterFileSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the sample word lists are available$`, testCtx.theSampleWordListsAreAvailable)
	sc.Step(`^the sample document is available$`, testCtx.theSampleDocumentIsAvailable)
	sc.Step(`^a file "([^"]*)" containing:$`, testCtx.aFileContaining)
	sc.Step(`^an empty file "([^"]*)"$`, testCtx.anEmptyFile)
	sc.Step(`^a PDF "([^"]*)" with pages:$`, testCtx.aPDFWithPages)

	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	sc.Step(`^the file "([^"]*)" should not exist$`, testCtx.theFileShouldNotExist)
	sc.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, testCtx.theFileShouldContain)
	sc.Step(`^the file "([^"]*)" should not contain "([^"]*)"$`, testCtx.theFileShouldNotContain)
	sc.Step(`^the file "([^"]*)" should be:$`, testCtx.theFileShouldBe)
	sc.Step(`^the file "([^"]*)" should be empty$`, testCtx.theFileShouldBeEmpty)
	sc.Step(`^I remember the content of "([^"]*)"$`, testCtx.iRememberTheContentOf)
	sc.Step(`^the file "([^"]*)" should be unchanged$`, testCtx.theFileShouldBeUnchanged)
}
