// Copyright 2026 evpop Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

// Column names of the Washington State EV population dataset. The loader
// tolerates files that carry only a subset of these.
const (
	ColVIN                 = "VIN"
	ColCounty              = "County"
	ColCity                = "City"
	ColState               = "State"
	ColPostalCode          = "Postal Code"
	ColModelYear           = "Model Year"
	ColMake                = "Make"
	ColModel               = "Model"
	ColElectricVehicleType = "Electric Vehicle Type"
	ColCAFVEligibility     = "Clean Alternative Fuel Vehicle (CAFV) Eligibility"
	ColElectricRange       = "Electric Range"
	ColBaseMSRP            = "Base MSRP"
	ColLegislativeDistrict = "Legislative District"
	ColDOLVehicleID        = "DOL Vehicle ID"
	ColVehicleLocation     = "Vehicle Location"
	ColElectricUtility     = "Electric Utility"
	ColCensusTract         = "2020 Census Tract"
)
