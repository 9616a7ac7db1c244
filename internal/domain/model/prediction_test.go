package model_test

import (
	"testing"

	"github.com/evpulse/evpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecideWarranty(t *testing.T) {
	Convey("Given the warranty claim rule", t, func() {
		Convey("When remaining life is short", func() {
			Convey("Then the claim should be accepted", func() {
				So(model.DecideWarranty(179, 0.1), ShouldEqual, model.WarrantyAccepted)
			})
		})

		Convey("When failure is likely", func() {
			Convey("Then the claim should be accepted even with long remaining life", func() {
				So(model.DecideWarranty(300, 0.6), ShouldEqual, model.WarrantyAccepted)
			})
		})

		Convey("When the vehicle is healthy", func() {
			Convey("Then the claim should be rejected", func() {
				So(model.DecideWarranty(300, 0.3), ShouldEqual, model.WarrantyRejected)
			})
		})

		Convey("When both readings sit exactly on their thresholds", func() {
			Convey("Then the claim should be rejected", func() {
				// 180 days is not under the limit and 0.5 is not over it.
				So(model.DecideWarranty(180, 0.5), ShouldEqual, model.WarrantyRejected)
			})
		})

		Convey("When remaining life is just under the threshold", func() {
			Convey("Then the claim should be accepted", func() {
				So(model.DecideWarranty(179.999, 0.0), ShouldEqual, model.WarrantyAccepted)
			})
		})
	})
}

func TestNewMaintenancePlan(t *testing.T) {
	Convey("Given the fixed plan ratios", t, func() {
		Convey("When deriving a plan from an average RUL of 300 days", func() {
			plan := model.NewMaintenancePlan(300, 45000)

			Convey("Then each interval should follow its ratio", func() {
				So(plan.BatteryCheckDays, ShouldEqual, 100)
				So(plan.BrakeServiceDays, ShouldEqual, 150)
				So(plan.CoolingInspectDays, ShouldEqual, 75)
				So(plan.MotorCheckDays, ShouldEqual, 60)
			})

			Convey("Then tire rotation should follow the distance", func() {
				So(plan.TireRotationKM, ShouldEqual, 45)
			})
		})

		Convey("When the average does not divide evenly", func() {
			plan := model.NewMaintenancePlan(100, 2500)

			Convey("Then intervals should be truncated, not rounded", func() {
				So(plan.BatteryCheckDays, ShouldEqual, 33)
				So(plan.BrakeServiceDays, ShouldEqual, 50)
				So(plan.CoolingInspectDays, ShouldEqual, 25)
				So(plan.MotorCheckDays, ShouldEqual, 20)
				So(plan.TireRotationKM, ShouldEqual, 2)
			})
		})

		Convey("When the inputs are zero", func() {
			plan := model.NewMaintenancePlan(0, 0)

			Convey("Then every interval should be zero", func() {
				So(plan.BatteryCheckDays, ShouldEqual, 0)
				So(plan.BrakeServiceDays, ShouldEqual, 0)
				So(plan.CoolingInspectDays, ShouldEqual, 0)
				So(plan.MotorCheckDays, ShouldEqual, 0)
				So(plan.TireRotationKM, ShouldEqual, 0)
			})
		})
	})
}
