package artifact_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/evpulse/evpulse/internal/domain/artifact"
	. "github.com/smartystreets/goconvey/convey"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given artifact files on disk", t, func() {
		Convey("When the file does not exist", func() {
			_, err := artifact.Load(filepath.Join(t.TempDir(), "nope.json"))

			Convey("Then loading should fail with the not-found kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, artifact.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the file is not valid JSON", func() {
			path := writeArtifact(t, "broken.json", "{not json")
			_, err := artifact.Load(path)

			Convey("Then loading should fail with the malformed kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, artifact.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When the task is unknown", func() {
			path := writeArtifact(t, "task.json", `{"task":"clustering","coefficients":[1]}`)
			_, err := artifact.Load(path)

			Convey("Then loading should fail with the malformed kind", func() {
				So(errors.Is(err, artifact.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When there are no coefficients", func() {
			path := writeArtifact(t, "empty.json", `{"task":"regression","coefficients":[]}`)
			_, err := artifact.Load(path)

			Convey("Then loading should fail with the malformed kind", func() {
				So(errors.Is(err, artifact.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When feature names disagree with the coefficient width", func() {
			path := writeArtifact(t, "width.json", `{"task":"regression","features":["a","b"],"coefficients":[1]}`)
			_, err := artifact.Load(path)

			Convey("Then loading should fail with the malformed kind", func() {
				So(errors.Is(err, artifact.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When the scaler carries a zero scale", func() {
			path := writeArtifact(t, "scale.json",
				`{"task":"regression","coefficients":[1,2],"scaler":{"mean":[0,0],"scale":[1,0]}}`)
			_, err := artifact.Load(path)

			Convey("Then loading should fail with the malformed kind", func() {
				So(errors.Is(err, artifact.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When the pipeline is well formed", func() {
			path := writeArtifact(t, "ok.json",
				`{"task":"regression","features":["a","b"],"coefficients":[2,3],"intercept":1}`)
			p, err := artifact.Load(path)

			Convey("Then it should load with the declared width", func() {
				So(err, ShouldBeNil)
				So(p, ShouldNotBeNil)
				So(p.Width(), ShouldEqual, 2)
				So(p.Task, ShouldEqual, artifact.TaskRegression)
			})
		})
	})
}

func TestPipeline_Predict(t *testing.T) {
	Convey("Given a regression pipeline", t, func() {
		p := &artifact.Pipeline{
			Task:         artifact.TaskRegression,
			Coefficients: []float64{2, 3},
			Intercept:    1,
		}

		Convey("When predicting over a batch", func() {
			out, err := p.Predict([][]float64{{1, 1}, {0, 2}})

			Convey("Then each row should get the linear estimate", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, []float64{6, 7})
			})
		})

		Convey("When a row has the wrong width", func() {
			_, err := p.Predict([][]float64{{1, 2, 3}})

			Convey("Then it should fail with the input kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, artifact.ErrBadInput), ShouldBeTrue)
			})
		})

		Convey("When asking for probabilities", func() {
			_, err := p.PredictProbability([][]float64{{1, 1}})

			Convey("Then it should fail with the task kind", func() {
				So(errors.Is(err, artifact.ErrWrongTask), ShouldBeTrue)
			})
		})
	})

	Convey("Given a regression pipeline with a scaler", t, func() {
		p := &artifact.Pipeline{
			Task:         artifact.TaskRegression,
			Coefficients: []float64{1, 1},
			Intercept:    0,
			Scaler: &artifact.Scaler{
				Mean:  []float64{10, 20},
				Scale: []float64{2, 5},
			},
		}

		Convey("When predicting a standardizable row", func() {
			out, err := p.Predict([][]float64{{12, 25}})

			Convey("Then inputs should be standardized before the dot product", func() {
				So(err, ShouldBeNil)
				// (12-10)/2 + (25-20)/5 = 1 + 1
				So(out[0], ShouldEqual, 2)
			})
		})

		Convey("When predicting the mean row", func() {
			out, err := p.Predict([][]float64{{10, 20}})

			Convey("Then the estimate should collapse to the intercept", func() {
				So(err, ShouldBeNil)
				So(out[0], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a classification pipeline", t, func() {
		p := &artifact.Pipeline{
			Task:         artifact.TaskClassification,
			Coefficients: []float64{1},
			Intercept:    0,
		}

		Convey("When predicting classes", func() {
			out, err := p.Predict([][]float64{{4}, {-4}})

			Convey("Then rows should split at the probability threshold", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, []float64{1, 0})
			})
		})

		Convey("When predicting probabilities", func() {
			out, err := p.PredictProbability([][]float64{{0}, {4}, {-4}})

			Convey("Then each should be the logistic of the decision value", func() {
				So(err, ShouldBeNil)
				So(out[0], ShouldEqual, 0.5)
				So(out[1], ShouldAlmostEqual, 1/(1+math.Exp(-4)), 1e-12)
				So(out[2], ShouldAlmostEqual, 1/(1+math.Exp(4)), 1e-12)
			})

			Convey("Then every probability should stay inside the unit interval", func() {
				for _, v := range out {
					So(v, ShouldBeGreaterThan, 0)
					So(v, ShouldBeLessThan, 1)
				}
			})
		})

		Convey("When a row has the wrong width", func() {
			_, err := p.PredictProbability([][]float64{{1, 2}})

			Convey("Then it should fail with the input kind", func() {
				So(errors.Is(err, artifact.ErrBadInput), ShouldBeTrue)
			})
		})
	})
}
