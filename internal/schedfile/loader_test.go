package schedfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdataDir = filepath.Join("testdata")

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		file          string
		wantErr       bool
		expectedError string
		expectedName  string
	}{
		{
			name:         "WithExt",
			file:         filepath.Join(testdataDir, "demo.yaml"),
			expectedName: "demo",
		},
		{
			name:         "WithoutExt",
			file:         filepath.Join(testdataDir, "demo"),
			expectedName: "demo",
		},
		{
			name:          "EmptyPath",
			file:          "",
			expectedError: "schedule file path is required",
		},
		{
			name:          "InvalidPath",
			file:          filepath.Join(testdataDir, "not_existing_file.yaml"),
			expectedError: "no such file or directory",
		},
		{
			name:          "UnknownKey",
			file:          filepath.Join(testdataDir, "err_decode.yaml"),
			expectedError: "invalid keys",
		},
		{
			name:    "InvalidYAML",
			file:    filepath.Join(testdataDir, "err_parse.yaml"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schedule, err := Load(context.Background(), tt.file)
			switch {
			case tt.expectedError != "":
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.expectedError)
			case tt.wantErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.NotNil(t, schedule.Scheduler)
				assert.Equal(t, tt.expectedName, schedule.Name)
			}
		})
	}
}

func TestLoad_NameDefaultsToFileName(t *testing.T) {
	t.Parallel()

	// The name in the file wins over the file name; WithName only fills
	// the gap when the file has no name of its own.
	schedule, err := Load(context.Background(), filepath.Join(testdataDir, "demo.yaml"), WithName("other"))
	require.NoError(t, err)
	assert.Equal(t, "demo", schedule.Name)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	t.Run("Minimal", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
units:
  - name: A
  - name: B
    depends: A
`)
		schedule, err := LoadYAML(context.Background(), data, WithName("pair"))
		require.NoError(t, err)
		assert.Equal(t, "pair", schedule.Name)

		queue := schedule.Scheduler.ConsiderationQueue()
		require.Len(t, queue, 2)
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()

		schedule, err := LoadYAML(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, schedule.Name)
		assert.Empty(t, schedule.Scheduler.ConsiderationQueue())
	})

	t.Run("NameInData", func(t *testing.T) {
		t.Parallel()

		schedule, err := LoadYAML(context.Background(), []byte(`name: named`))
		require.NoError(t, err)
		assert.Equal(t, "named", schedule.Name)
	})
}

func TestResolveYamlFilePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "schedule.yaml", resolveYamlFilePath("schedule"))
	assert.Equal(t, "schedule.yaml", resolveYamlFilePath("schedule.yaml"))
	assert.Equal(t, "schedule.yml", resolveYamlFilePath("schedule.yml"))
}

func TestDecode_StrictKeys(t *testing.T) {
	t.Parallel()

	raw, err := unmarshalData([]byte(`
units:
  - name: A
    conditionz: always
`))
	require.NoError(t, err)

	_, err = decode(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conditionz")
}
