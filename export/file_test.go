package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	name := FileName(testSession(), "csv")
	assert.True(t, strings.HasPrefix(name, "anesthesia_C001_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

func TestFileName_SanitizesCaseNumber(t *testing.T) {
	session := testSession()
	session.PatientInfo.CaseNumber = `C/0:0*1?`
	name := FileName(session, "pdf")
	assert.False(t, strings.ContainsAny(name, `/\:*?"<>|`))
	assert.Contains(t, name, "C_0_0_1_")
}

func TestFileName_EmptyCaseNumber(t *testing.T) {
	session := testSession()
	session.PatientInfo.CaseNumber = ""
	name := FileName(session, "csv")
	assert.True(t, strings.HasPrefix(name, "anesthesia_unnamed_"))
}

func TestWriteCSV_BOMPrefix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testSession()))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, GenerateCSV(testSession()), string(out[3:]))
}
