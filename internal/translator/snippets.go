package translator

// Built-in example output per format pair. Every snippet describes the
// same demo bucket/storage resource in the target format.

const terraformToCloudFormation = `{
  "AWSTemplateFormatVersion": "2010-09-09",
  "Description": "Translated from Terraform",
  "Resources": {
    "ExampleBucket": {
      "Type": "AWS::S3::Bucket",
      "Properties": {
        "BucketName": "my-example-bucket",
        "VersioningConfiguration": {
          "Status": "Enabled"
        },
        "Tags": [
          { "Key": "Environment", "Value": "dev" }
        ]
      }
    }
  }
}`

const terraformToPulumi = `import * as aws from "@pulumi/aws";

const exampleBucket = new aws.s3.Bucket("example", {
    bucket: "my-example-bucket",
    versioning: {
        enabled: true,
    },
    tags: {
        Environment: "dev",
    },
});

export const bucketName = exampleBucket.id;`

const terraformToAzure = `{
  "$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#",
  "contentVersion": "1.0.0.0",
  "resources": [
    {
      "type": "Microsoft.Storage/storageAccounts",
      "apiVersion": "2023-01-01",
      "name": "myexamplestorage",
      "location": "[resourceGroup().location]",
      "sku": { "name": "Standard_LRS" },
      "kind": "StorageV2",
      "tags": { "Environment": "dev" }
    }
  ]
}`

const terraformToGCP = `resources:
- name: my-example-bucket
  type: storage.v1.bucket
  properties:
    location: US
    versioning:
      enabled: true
    labels:
      environment: dev`

const cloudFormationToTerraform = `resource "aws_s3_bucket" "example" {
  bucket = "my-example-bucket"

  tags = {
    Environment = "dev"
  }
}

resource "aws_s3_bucket_versioning" "example" {
  bucket = aws_s3_bucket.example.id

  versioning_configuration {
    status = "Enabled"
  }
}`

const cloudFormationToPulumi = `import * as aws from "@pulumi/aws";

const exampleBucket = new aws.s3.Bucket("ExampleBucket", {
    bucket: "my-example-bucket",
    versioning: { enabled: true },
});

export const bucketArn = exampleBucket.arn;`

const pulumiToTerraform = `provider "aws" {
  region = "us-east-1"
}

resource "aws_s3_bucket" "example" {
  bucket = "my-example-bucket"
}

output "bucket_name" {
  value = aws_s3_bucket.example.id
}`

const pulumiToCloudFormation = `AWSTemplateFormatVersion: "2010-09-09"
Resources:
  ExampleBucket:
    Type: AWS::S3::Bucket
    Properties:
      BucketName: my-example-bucket
Outputs:
  BucketName:
    Value: !Ref ExampleBucket`

const azureToTerraform = `provider "azurerm" {
  features {}
}

resource "azurerm_storage_account" "example" {
  name                     = "myexamplestorage"
  resource_group_name      = azurerm_resource_group.example.name
  location                 = azurerm_resource_group.example.location
  account_tier             = "Standard"
  account_replication_type = "LRS"

  tags = {
    environment = "dev"
  }
}`

const gcpToTerraform = `provider "google" {
  project = "my-project"
}

resource "google_storage_bucket" "example" {
  name     = "my-example-bucket"
  location = "US"

  versioning {
    enabled = true
  }

  labels = {
    environment = "dev"
  }
}`
