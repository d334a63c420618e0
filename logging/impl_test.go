package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestConsoleLineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewBlankLogger("remap")
	logger.AddAppender(NewWriterAppender(&buf))

	logger.Infow("distorted", "width", 4, "height", 4)
	parts := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	test.That(t, parts, test.ShouldHaveLength, 6)
	test.That(t, parts[1], test.ShouldEqual, "INFO")
	test.That(t, parts[2], test.ShouldEqual, "remap")
	test.That(t, parts[3], test.ShouldStartWith, "logging/impl_test.go:")
	test.That(t, parts[4], test.ShouldEqual, "distorted")
	test.That(t, parts[5], test.ShouldEqual, `{"width":4,"height":4}`)
}

func TestUnpairedKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewBlankLogger("remap")
	logger.AddAppender(NewWriterAppender(&buf))

	logger.Warnw("oops", "lonely")
	test.That(t, buf.String(), test.ShouldContainSubstring, `"lonely":"unpaired log key"`)
}

func TestLevels(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.SetLevel(WARN)

	logger.Debug("hidden")
	logger.Infof("hidden %d", 1)
	logger.Warn("shown")
	logger.Errorf("shown %d", 2)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.All()[0].Message, test.ShouldEqual, "shown")
	test.That(t, logs.All()[1].Message, test.ShouldEqual, "shown 2")
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
}

func TestSubloggerNames(t *testing.T) {
	logger := NewBlankLogger("radialwarp")
	sub := logger.Sublogger("display")
	test.That(t, sub.Name(), test.ShouldEqual, "radialwarp.display")
	test.That(t, sub.Sublogger("web").Name(), test.ShouldEqual, "radialwarp.display.web")

	unnamed, logs := NewObservedTestLogger(t)
	child := unnamed.Sublogger("pipeline")
	test.That(t, child.Name(), test.ShouldEqual, "pipeline")
	child.Info("from child")
	test.That(t, logs.FilterMessage("from child").Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].LoggerName, test.ShouldEqual, "pipeline")
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"Error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, level.UnmarshalJSON([]byte(`"warn"`)), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	data, err := level.MarshalJSON()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, `"Warn"`)
}
