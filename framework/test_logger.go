package framework

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

// ResultSink receives every recorded test result as soon as the test finishes.
type ResultSink interface {
	Record(result TestResult)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

type nullResultSink struct{}

func (n nullResultSink) Record(TestResult) {}
