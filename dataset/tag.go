package dataset

import (
	"fmt"

	"github.com/scatterlab/nddata/internal/elem"
)

// Category classifies a Tag as a coordinate, a data value, or metadata
// attribute (spec §3 "Tag").
type Category uint8

const (
	CategoryCoord Category = iota
	CategoryData
	CategoryAttr
)

func (c Category) String() string {
	switch c {
	case CategoryCoord:
		return "Coord"
	case CategoryData:
		return "Data"
	case CategoryAttr:
		return "Attr"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// TagID is a compile-time-known identifier for a kind of Variable
// (spec §3 "Tag"). The catalogue below reproduces the source
// prototype's tags.h in full: every Coord/Data/Attr member it defines
// gets a TagID, not just the handful spec.md calls out by name.
type TagID uint16

const (
	tagInvalid TagID = iota

	// Coord tags.
	CoordX
	CoordY
	CoordZ
	CoordTof
	CoordMonitorTof
	CoordDetectorID
	CoordSpectrumNumber
	CoordDetectorIsMonitor
	CoordDetectorMask
	CoordDetectorRotation
	CoordDetectorPosition
	CoordDetectorGrouping
	CoordSpectrumPosition // computed
	CoordRowLabel
	CoordPolarization
	CoordTemperature
	CoordFuzzyTemperature
	CoordTime
	CoordTimeInterval
	CoordMask
	CoordComponentRotation
	CoordComponentPosition
	CoordComponentParent
	CoordComponentChildren
	CoordComponentScale
	CoordComponentShape
	CoordComponentName
	CoordComponentSubtree
	CoordDetectorSubtree
	CoordComponentSubtreeRange
	CoordDetectorSubtreeRange
	CoordDetectorParent
	CoordDetectorScale
	CoordDetectorShape

	// Data tags.
	DataTof
	DataPulseTime
	DataValue
	DataVariance
	DataStdDev // computed
	DataInt
	DataDimensionSize
	DataString
	DataHistory
	DataEvents
	DataTable

	// Attr tags.
	AttrExperimentLog

	tagCount
)

// tagInfo is the static per-tag metadata the registry (§4.C) exposes:
// element kind, default unit, category, and dimension-coordinate
// properties.
type tagInfo struct {
	name                 string
	kind                 elem.Kind
	unit                 Unit
	category             Category
	isDimensionCoord     bool
	coordinateDimension  Dim
	computed             bool
}

var registry = buildRegistry()

func buildRegistry() [tagCount]tagInfo {
	var r [tagCount]tagInfo

	coord := func(id TagID, name string, kind elem.Kind, unit Unit) {
		r[id] = tagInfo{name: name, kind: kind, unit: unit, category: CategoryCoord}
	}
	dimCoord := func(id TagID, name string, kind elem.Kind, unit Unit, dim Dim) {
		r[id] = tagInfo{name: name, kind: kind, unit: unit, category: CategoryCoord, isDimensionCoord: true, coordinateDimension: dim}
	}
	computed := func(id TagID, name string, kind elem.Kind, category Category) {
		r[id] = tagInfo{name: name, kind: kind, category: category, computed: true}
	}
	data := func(id TagID, name string, kind elem.Kind, unit Unit) {
		r[id] = tagInfo{name: name, kind: kind, unit: unit, category: CategoryData}
	}
	attr := func(id TagID, name string, kind elem.Kind, unit Unit) {
		r[id] = tagInfo{name: name, kind: kind, unit: unit, category: CategoryAttr}
	}

	dimCoord(CoordX, "Coord::X", elem.KindFloat64, Length, X)
	dimCoord(CoordY, "Coord::Y", elem.KindFloat64, Length, Y)
	dimCoord(CoordZ, "Coord::Z", elem.KindFloat64, Length, Z)
	dimCoord(CoordTof, "Coord::Tof", elem.KindFloat64, Dimensionless, Tof)
	coord(CoordMonitorTof, "Coord::MonitorTof", elem.KindFloat64, Dimensionless)
	coord(CoordDetectorID, "Coord::DetectorID", elem.KindInt32, Dimensionless)
	dimCoord(CoordSpectrumNumber, "Coord::SpectrumNumber", elem.KindInt32, Dimensionless, Spectrum)
	coord(CoordDetectorIsMonitor, "Coord::DetectorIsMonitor", elem.KindInt32, Dimensionless)
	coord(CoordDetectorMask, "Coord::DetectorMask", elem.KindInt32, Dimensionless)
	coord(CoordDetectorRotation, "Coord::DetectorRotation", elem.KindFixedArray, Dimensionless)
	coord(CoordDetectorPosition, "Coord::DetectorPosition", elem.KindFloat64, Length)
	coord(CoordDetectorGrouping, "Coord::DetectorGrouping", elem.KindSmallIndexVector, Dimensionless)
	computed(CoordSpectrumPosition, "Coord::SpectrumPosition", elem.KindFloat64, CategoryCoord)
	dimCoord(CoordRowLabel, "Coord::RowLabel", elem.KindString, Dimensionless, Row)
	coord(CoordPolarization, "Coord::Polarization", elem.KindString, Dimensionless)
	coord(CoordTemperature, "Coord::Temperature", elem.KindFloat64, Dimensionless)
	coord(CoordFuzzyTemperature, "Coord::FuzzyTemperature", elem.KindValueWithDelta, Dimensionless)
	dimCoord(CoordTime, "Coord::Time", elem.KindInt64, Dimensionless, Time)
	coord(CoordTimeInterval, "Coord::TimeInterval", elem.KindIndexPair, Dimensionless)
	coord(CoordMask, "Coord::Mask", elem.KindInt32, Dimensionless)
	coord(CoordComponentRotation, "Coord::ComponentRotation", elem.KindFixedArray, Dimensionless)
	coord(CoordComponentPosition, "Coord::ComponentPosition", elem.KindFixedArray, Length)
	coord(CoordComponentParent, "Coord::ComponentParent", elem.KindInt64, Dimensionless)
	coord(CoordComponentChildren, "Coord::ComponentChildren", elem.KindIndexVector, Dimensionless)
	coord(CoordComponentScale, "Coord::ComponentScale", elem.KindFixedArray, Dimensionless)
	coord(CoordComponentShape, "Coord::ComponentShape", elem.KindSharedFixedArray, Dimensionless)
	coord(CoordComponentName, "Coord::ComponentName", elem.KindString, Dimensionless)
	coord(CoordComponentSubtree, "Coord::ComponentSubtree", elem.KindIndexVector, Dimensionless)
	coord(CoordDetectorSubtree, "Coord::DetectorSubtree", elem.KindIndexVector, Dimensionless)
	coord(CoordComponentSubtreeRange, "Coord::ComponentSubtreeRange", elem.KindIndexPair, Dimensionless)
	coord(CoordDetectorSubtreeRange, "Coord::DetectorSubtreeRange", elem.KindIndexPair, Dimensionless)
	coord(CoordDetectorParent, "Coord::DetectorParent", elem.KindInt64, Dimensionless)
	coord(CoordDetectorScale, "Coord::DetectorScale", elem.KindFixedArray, Dimensionless)
	coord(CoordDetectorShape, "Coord::DetectorShape", elem.KindSharedFixedArray, Dimensionless)

	data(DataTof, "Data::Tof", elem.KindFloat64, Dimensionless)
	data(DataPulseTime, "Data::PulseTime", elem.KindFloat64, Dimensionless)
	data(DataValue, "Data::Value", elem.KindFloat64, Dimensionless)
	data(DataVariance, "Data::Variance", elem.KindFloat64, Dimensionless)
	computed(DataStdDev, "Data::StdDev", elem.KindFloat64, CategoryData)
	data(DataInt, "Data::Int", elem.KindInt64, Dimensionless)
	data(DataDimensionSize, "Data::DimensionSize", elem.KindInt64, Dimensionless)
	data(DataString, "Data::String", elem.KindString, Dimensionless)
	data(DataHistory, "Data::History", elem.KindStringVector, Dimensionless)
	data(DataEvents, "Data::Events", elem.KindDataset, Dimensionless)
	data(DataTable, "Data::Table", elem.KindDataset, Dimensionless)

	attr(AttrExperimentLog, "Attr::ExperimentLog", elem.KindDataset, Dimensionless)

	return r
}

func (t TagID) info() tagInfo {
	if t == tagInvalid || t >= tagCount {
		return tagInfo{name: "Invalid"}
	}
	return registry[t]
}

// String returns the tag's canonical "Category::Name" spelling.
func (t TagID) String() string { return t.info().name }

// ElementKind returns the fixed element type this tag stores.
func (t TagID) ElementKind() elem.Kind { return t.info().kind }

// DefaultUnit returns the Unit a Variable of this tag is created with.
func (t TagID) DefaultUnit() Unit { return t.info().unit }

// Category reports whether this tag is a coordinate, data, or attribute.
func (t TagID) Category() Category { return t.info().category }

// IsDimensionCoordinate reports whether this tag parametrises a Dim
// (and so may appear at most once per Dataset, ordered along that Dim).
func (t TagID) IsDimensionCoordinate() bool { return t.info().isDimensionCoord }

// CoordinateDimension returns the Dim this dimension-coordinate tag
// parametrises. Only meaningful when IsDimensionCoordinate is true.
func (t TagID) CoordinateDimension() Dim { return t.info().coordinateDimension }

// IsComputed reports whether this tag is derived on the fly from other
// variables (Data::StdDev, Coord::SpectrumPosition) and so can never be
// stored directly (spec §4.C).
func (t TagID) IsComputed() bool { return t.info().computed }

// RequiresName reports whether a Variable of this tag must carry a
// name (data/attribute tags) as opposed to forbidding one (coordinates).
func (t TagID) RequiresName() bool { return t.Category() != CategoryCoord }
