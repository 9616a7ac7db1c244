package model_test

import (
	"errors"
	"testing"

	"github.com/evpulse/evpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFieldSpecs(t *testing.T) {
	Convey("Given the field descriptions", t, func() {
		specs := model.FieldSpecs()

		Convey("Then there should be one per model feature", func() {
			So(len(specs), ShouldEqual, model.FeatureCount)
		})

		Convey("Then every field should have a coherent range and default", func() {
			for _, spec := range specs {
				So(spec.Name, ShouldNotBeEmpty)
				So(spec.JSON, ShouldNotBeEmpty)
				So(spec.Min, ShouldBeLessThan, spec.Max)
				So(spec.Default, ShouldBeGreaterThanOrEqualTo, spec.Min)
				So(spec.Default, ShouldBeLessThanOrEqualTo, spec.Max)
			}
		})

		Convey("Then exactly the three percentage controls should be marked", func() {
			percent := make([]string, 0, 3)
			for _, spec := range specs {
				if spec.Percent {
					percent = append(percent, spec.Name)
				}
			}
			So(percent, ShouldResemble, []string{"SoC", "SoH", "Brake_Pad_Wear"})
		})
	})
}

func TestFeatureNames(t *testing.T) {
	Convey("Given the canonical feature names", t, func() {
		names := model.FeatureNames()

		Convey("Then they should follow the field specs in order", func() {
			specs := model.FieldSpecs()
			So(len(names), ShouldEqual, len(specs))
			for i, spec := range specs {
				So(names[i], ShouldEqual, spec.Name)
			}
		})

		Convey("Then the vector should start with state of charge and health", func() {
			So(names[0], ShouldEqual, "SoC")
			So(names[1], ShouldEqual, "SoH")
		})
	})
}

func TestSensorRecord_Validate(t *testing.T) {
	Convey("Given a record with default control values", t, func() {
		record := model.DefaultRecord()

		Convey("Then validation should pass", func() {
			So(record.Validate(), ShouldBeNil)
		})

		Convey("When a field exceeds its maximum", func() {
			record.SoC = 150

			Convey("Then validation should fail with the range error", func() {
				err := record.Validate()
				So(err, ShouldNotBeNil)
				So(errors.Is(err, model.ErrOutOfRange), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "soc")
			})
		})

		Convey("When a field falls below its minimum", func() {
			record.TirePressure = 10

			Convey("Then validation should fail with the range error", func() {
				err := record.Validate()
				So(err, ShouldNotBeNil)
				So(errors.Is(err, model.ErrOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When a field sits exactly on a bound", func() {
			record.AmbientTemperature = -10

			Convey("Then validation should still pass", func() {
				So(record.Validate(), ShouldBeNil)
			})
		})
	})
}

func TestSensorRecord_Vector(t *testing.T) {
	Convey("Given a record with default control values", t, func() {
		record := model.DefaultRecord()

		Convey("When converting to a model input row", func() {
			vec := record.Vector()

			Convey("Then the row should have the model feature width", func() {
				So(len(vec), ShouldEqual, model.FeatureCount)
			})

			Convey("Then percent fields should be fractions and the rest untouched", func() {
				for i, spec := range model.FieldSpecs() {
					expected := spec.Default
					if spec.Percent {
						expected /= 100
					}
					So(vec[i], ShouldEqual, expected)
				}
			})
		})

		Convey("When the percentage controls carry specific readings", func() {
			record.SoC = 80
			record.SoH = 95
			record.BrakePadWear = 20

			Convey("Then the row should carry their fractional values", func() {
				vec := record.Vector()
				So(vec[0], ShouldEqual, 0.80)
				So(vec[1], ShouldEqual, 0.95)
				So(vec[11], ShouldEqual, 0.20)
			})
		})

		Convey("When a non-percent control carries a specific reading", func() {
			record.BatteryVoltage = 412.5

			Convey("Then the row should carry it verbatim", func() {
				vec := record.Vector()
				So(vec[2], ShouldEqual, 412.5)
			})
		})
	})
}
